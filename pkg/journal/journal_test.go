package journal_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"

	"github.com/kode4food/strand/pkg/journal"
	"github.com/kode4food/strand/pkg/api"
)

func entry(flowID api.ID, step api.StepType, seq int) *journal.Entry {
	return &journal.Entry{
		FlowID:    flowID,
		Name:      "worker",
		Token:     "tok-1",
		Step:      step,
		Args:      []string{"42"},
		Seq:       seq,
		Timestamp: time.Now().UTC().Truncate(time.Millisecond),
	}
}

func testJournal(t *testing.T, j journal.Journal) {
	t.Helper()
	ctx := context.Background()

	assert.NoError(t, j.Record(ctx, entry(2, api.StepSpawn, 1)))
	assert.NoError(t, j.Record(ctx, entry(2, api.StepResume, 2)))
	assert.NoError(t, j.Record(ctx, entry(2, api.StepReturn, 3)))
	assert.NoError(t, j.Record(ctx, entry(5, api.StepSpawn, 1)))

	flows, err := j.Flows(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []api.ID{2, 5}, flows)

	steps, err := j.Steps(ctx, 2)
	assert.NoError(t, err)
	assert.Len(t, steps, 3)
	assert.Equal(t, api.StepSpawn, steps[0].Step)
	assert.Equal(t, api.StepResume, steps[1].Step)
	assert.Equal(t, api.StepReturn, steps[2].Step)
	assert.Equal(t, []string{"42"}, steps[0].Args)
	assert.Equal(t, "worker", steps[0].Name)
	assert.Equal(t, "tok-1", steps[0].Token)

	steps, err = j.Steps(ctx, 99)
	assert.NoError(t, err)
	assert.Empty(t, steps)
}

func TestMemoryJournal(t *testing.T) {
	testJournal(t, journal.NewMemory())
}

func TestRedisJournal(t *testing.T) {
	srv := miniredis.RunT(t)

	j := journal.NewRedis(&journal.RedisConfig{
		Addr:   srv.Addr(),
		Prefix: "strand-test",
	})
	t.Cleanup(func() {
		_ = j.Close()
	})

	testJournal(t, j)
}

func TestRedisJournalDefaultPrefix(t *testing.T) {
	srv := miniredis.RunT(t)

	j := journal.NewRedis(&journal.RedisConfig{
		Addr: srv.Addr(),
	})
	t.Cleanup(func() {
		_ = j.Close()
	})

	ctx := context.Background()
	assert.NoError(t, j.Record(ctx, entry(1, api.StepSpawn, 1)))
	assert.True(t, srv.Exists(journal.DefaultPrefix+":flow:1"))
	assert.True(t, srv.Exists(journal.DefaultPrefix+":flows"))
}
