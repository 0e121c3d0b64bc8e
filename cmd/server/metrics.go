package main

import (
	"fmt"
	"io"

	"dinerline.ai/internal/sim/runner"
)

func writeMetrics(w io.Writer, runID string, st runner.Status, idx runtimeIndex) {
	fmt.Fprintf(w, "# HELP dinerline_turn Current turn.\n")
	fmt.Fprintf(w, "# TYPE dinerline_turn counter\n")
	fmt.Fprintf(w, "dinerline_turn{run=%q} %d\n", runID, st.Turn)

	fmt.Fprintf(w, "# HELP dinerline_level Current level number.\n")
	fmt.Fprintf(w, "# TYPE dinerline_level gauge\n")
	fmt.Fprintf(w, "dinerline_level{run=%q} %d\n", runID, st.Level)

	fmt.Fprintf(w, "# HELP dinerline_score Accumulated score.\n")
	fmt.Fprintf(w, "# TYPE dinerline_score gauge\n")
	fmt.Fprintf(w, "dinerline_score{run=%q} %d\n", runID, st.Score)

	if idx == nil {
		return
	}
	s := idx.Stats()
	fmt.Fprintf(w, "# HELP dinerline_index_queue_depth Current index write queue depth.\n")
	fmt.Fprintf(w, "# TYPE dinerline_index_queue_depth gauge\n")
	fmt.Fprintf(w, "dinerline_index_queue_depth %d\n", s.QueueDepth)

	fmt.Fprintf(w, "# HELP dinerline_index_dropped_turns_total Turns dropped because the index fell behind.\n")
	fmt.Fprintf(w, "# TYPE dinerline_index_dropped_turns_total counter\n")
	fmt.Fprintf(w, "dinerline_index_dropped_turns_total %d\n", s.DropTurnTotal)
}
