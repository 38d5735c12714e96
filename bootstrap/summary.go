package bootstrap

import (
	"fmt"
	"io"
	"time"
)

// InfrastructureInfo describes a resource set up before the task ran.
type InfrastructureInfo struct {
	Name    string
	Details string
	Healthy bool
}

// StageInfo describes one completed stage of the task.
type StageInfo struct {
	Name     string
	Details  string
	Duration time.Duration
}

// Summary tracks and displays what a run did.
type Summary struct {
	serviceName    string
	version        string
	duration       time.Duration
	err            error
	infrastructure []InfrastructureInfo
	stages         []StageInfo
}

// NewSummary creates a new run summary tracker.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName:    serviceName,
		version:        version,
		infrastructure: make([]InfrastructureInfo, 0),
		stages:         make([]StageInfo, 0),
	}
}

// SetDuration records the total run time.
func (s *Summary) SetDuration(d time.Duration) {
	s.duration = d
}

// SetResult records the task's outcome.
func (s *Summary) SetResult(err error) {
	s.err = err
}

// TrackInfrastructure records a resource and whether it came up.
func (s *Summary) TrackInfrastructure(name, details string, healthy bool) {
	s.infrastructure = append(s.infrastructure, InfrastructureInfo{
		Name:    name,
		Details: details,
		Healthy: healthy,
	})
}

// TrackStage records a completed stage of the task.
func (s *Summary) TrackStage(name, details string, d time.Duration) {
	s.stages = append(s.stages, StageInfo{
		Name:     name,
		Details:  details,
		Duration: d,
	})
}

// Stages returns the recorded stages in order.
func (s *Summary) Stages() []StageInfo {
	return append([]StageInfo(nil), s.stages...)
}

// Display writes the summary to w.
func (s *Summary) Display(w io.Writer) {
	version := s.version
	if version == "" {
		version = "dev"
	}
	fmt.Fprintf(w, "\n")
	if s.err != nil {
		fmt.Fprintf(w, "❌ %s %s failed after %.2fs\n\n", s.serviceName, version, s.duration.Seconds())
	} else {
		fmt.Fprintf(w, "✅ %s %s finished in %.2fs\n\n", s.serviceName, version, s.duration.Seconds())
	}

	if len(s.infrastructure) > 0 {
		fmt.Fprintf(w, "📊 Infrastructure\n")
		for i, inf := range s.infrastructure {
			fmt.Fprintf(w, "   %s %s %s: %s\n", treePrefix(i, len(s.infrastructure)), statusIcon(inf.Healthy), inf.Name, inf.Details)
		}
		fmt.Fprintf(w, "\n")
	}

	if len(s.stages) > 0 {
		fmt.Fprintf(w, "📦 Stages\n")
		for i, st := range s.stages {
			fmt.Fprintf(w, "   %s %s: %s (%s)\n", treePrefix(i, len(s.stages)), st.Name, st.Details, st.Duration.Round(time.Microsecond))
		}
		fmt.Fprintf(w, "\n")
	} else {
		fmt.Fprintf(w, "   └── No stages completed\n\n")
	}

	if s.err != nil {
		fmt.Fprintf(w, "⚠️  %v\n\n", s.err)
	}
}

// DisplaySummary writes the run summary to w.
func (a *App) DisplaySummary(w io.Writer) {
	a.Summary.Display(w)
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func statusIcon(healthy bool) string {
	if healthy {
		return "✅"
	}
	return "❌"
}
