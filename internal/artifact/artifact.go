// Package artifact persists trajectories as Arrow IPC files and verdicts as
// JSON documents. Both are write-once outputs of a completed run; the Arrow
// file is the columnar companion to the series blobs in the results store.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/lab"
	"github.com/danielpatrickdp/ouroboros-lab/go-lab/internal/trajectory"
)

// #region schema
func trajectorySchema() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "step", Type: arrow.PrimitiveTypes.Int64},
		{Name: "omega", Type: arrow.PrimitiveTypes.Float64},
		{Name: "h", Type: arrow.PrimitiveTypes.Float64},
	}, nil)
}

// #endregion schema

// #region write
// WriteTrajectory writes the full trajectory to path as a single-record
// Arrow IPC file. Row order is step order; row count is steps+1.
func WriteTrajectory(path string, tr *trajectory.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	defer f.Close()

	schema := trajectorySchema()
	w, err := ipc.NewFileWriter(f, ipc.WithSchema(schema))
	if err != nil {
		return fmt.Errorf("open ipc writer: %w", err)
	}

	b := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer b.Release()

	for i := 0; i < tr.Len(); i++ {
		p := tr.At(i)
		b.Field(0).(*array.Int64Builder).Append(int64(p.Step))
		b.Field(1).(*array.Float64Builder).Append(p.Omega)
		b.Field(2).(*array.Float64Builder).Append(p.H)
	}

	rec := b.NewRecord()
	defer rec.Release()

	if err := w.Write(rec); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close ipc writer: %w", err)
	}
	return nil
}

// #endregion write

// #region read
// ReadTrajectory loads a trajectory artifact written by WriteTrajectory.
func ReadTrajectory(path string) (*trajectory.Trajectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	r, err := ipc.NewFileReader(f, ipc.WithAllocator(memory.DefaultAllocator))
	if err != nil {
		return nil, fmt.Errorf("open ipc reader: %w", err)
	}
	defer r.Close()

	var omega, h []float64
	for i := 0; i < r.NumRecords(); i++ {
		rec, err := r.Record(i)
		if err != nil {
			return nil, fmt.Errorf("read record %d: %w", i, err)
		}
		oc := rec.Column(1).(*array.Float64)
		hc := rec.Column(2).(*array.Float64)
		for j := 0; j < int(rec.NumRows()); j++ {
			omega = append(omega, oc.Value(j))
			h = append(h, hc.Value(j))
		}
	}
	return trajectory.FromSeries(omega, h), nil
}

// #endregion read

// #region verdict-json
// WriteVerdict writes the run's verdict document next to the trajectory:
// label, score, lag, params and thresholds, pretty-printed.
func WriteVerdict(path string, res lab.RunResult) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal verdict: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write verdict: %w", err)
	}
	return nil
}

// #endregion verdict-json
