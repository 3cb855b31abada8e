// main is the entry point for the projscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/cmd"
)

func main() {
	err := cmd.Execute()
	if profErr := cmd.StopProfiling(); profErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to stop profiling: %v\n", profErr)
	}
	if closeErr := cmd.CloseSnapshotStore(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close snapshot store: %v\n", closeErr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
