package log

import (
	"log/slog"

	"github.com/kode4food/strand/pkg/api"
)

func FlowID(id api.ID) slog.Attr {
	return slog.Int64("flow_id", int64(id))
}

func ActionID(id api.ID) slog.Attr {
	return slog.Int64("action_id", int64(id))
}

func Name(name string) slog.Attr {
	return slog.String("name", name)
}

func Step(t api.StepType) slog.Attr {
	return slog.String("step", string(t))
}

func Token(token string) slog.Attr {
	return slog.String("token", token)
}

func Error(err error) slog.Attr {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return slog.String("error", msg)
}

func ErrorString(msg string) slog.Attr {
	return slog.String("error", msg)
}
