package scanner

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"formatscan/internal/decode"
	"formatscan/internal/fsinput"
	"formatscan/internal/spec"
	"formatscan/internal/telemetry"
)

type stubFormat struct {
	name  string
	order binary.ByteOrder
	root  spec.FormatSpec
}

func (f stubFormat) Name() string               { return f.name }
func (f stubFormat) Order() binary.ByteOrder    { return f.order }
func (f stubFormat) Decodable() spec.FormatSpec { return f.root }

func okFormat(name string) decode.Format {
	return stubFormat{name: name, order: binary.BigEndian, root: spec.Struct(name, spec.Raw("body", 2))}
}

func failFormat(name string) decode.Format {
	return stubFormat{name: name, order: binary.BigEndian, root: spec.Struct(name, spec.Raw("body", 100))}
}

func TestScanAllRunsJobsIndependently(t *testing.T) {
	jobs := []Job{
		{Format: okFormat("a"), Input: fsinput.FromBytes("a", binary.BigEndian, []byte{1, 2}), Position: 0},
		{Format: failFormat("b"), Input: fsinput.FromBytes("b", binary.BigEndian, []byte{1, 2}), Position: 0},
		{Format: okFormat("c"), Input: fsinput.FromBytes("c", binary.BigEndian, []byte{1, 2}), Position: 0},
	}

	outcomes, err := ScanAll(context.Background(), jobs, 0, telemetry.Noop())
	require.NoError(t, err, "ScanAll's own error is about orchestration, never a single job's decode outcome")
	require.Len(t, outcomes, 3)

	require.NoError(t, outcomes[0].Err)
	require.NotNil(t, outcomes[0].Result)
	require.False(t, outcomes[0].Result.Status.IsFatal())

	require.NoError(t, outcomes[1].Err, "a truncated read is a fatal status, not a job error")
	require.True(t, outcomes[1].Result.Status.IsFatal(), "job b's truncation never aborts job c")

	require.NoError(t, outcomes[2].Err)
	require.False(t, outcomes[2].Result.Status.IsFatal())
}

func TestScanAllRespectsParallelismLimit(t *testing.T) {
	jobs := make([]Job, 6)
	for i := range jobs {
		jobs[i] = Job{Format: okFormat("job"), Input: fsinput.FromBytes("job", binary.BigEndian, []byte{1, 2}), Position: 0}
	}

	outcomes, err := ScanAll(context.Background(), jobs, 2, telemetry.Noop())
	require.NoError(t, err)
	require.Len(t, outcomes, 6)
	for _, o := range outcomes {
		require.NoError(t, o.Err)
	}
}
