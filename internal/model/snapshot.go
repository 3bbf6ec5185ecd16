package model

import "time"

// Snapshot is the result of one collection run.
type Snapshot struct {
	// ID is the history database identifier. Zero for unsaved snapshots.
	ID int64 `json:"id,omitempty"`

	// Hostname is the node name reported by the operating system.
	Hostname string `json:"hostname"`

	// CollectedAt is when collection started.
	CollectedAt time.Time `json:"collected_at"`

	// Kernel holds the uname results.
	Kernel KernelInfo `json:"kernel"`

	// Memory holds the page-based memory usage.
	Memory MemoryInfo `json:"memory"`

	// Disk holds the root filesystem usage row.
	Disk DiskInfo `json:"disk"`

	// Errors lists the collection steps that failed, in execution order.
	Errors []StepError `json:"errors,omitempty"`
}

// StepError records a failed collection step.
type StepError struct {
	// Step is the step name, for example "memory".
	Step string `json:"step"`

	// Message is the error text.
	Message string `json:"message"`
}

// NewSnapshot creates an empty Snapshot stamped with the current time.
func NewSnapshot(hostname string) *Snapshot {
	return &Snapshot{
		Hostname:    hostname,
		CollectedAt: time.Now(),
	}
}

// AddError records a failed step.
func (s *Snapshot) AddError(step string, err error) {
	if err == nil {
		return
	}
	s.Errors = append(s.Errors, StepError{Step: step, Message: err.Error()})
}

// HasErrors reports whether any step failed.
func (s *Snapshot) HasErrors() bool {
	return len(s.Errors) > 0
}

// KernelInfo holds the kernel identification strings.
type KernelInfo struct {
	// Release is the trimmed output of `uname -r`. Empty when unavailable.
	Release string `json:"release,omitempty"`

	// Full is the trimmed output of `uname -a`. Empty when unavailable.
	Full string `json:"full,omitempty"`

	// HasRelease is true when `uname -r` succeeded.
	HasRelease bool `json:"has_release"`

	// HasFull is true when `uname -a` succeeded.
	HasFull bool `json:"has_full"`
}

// DiskInfo is the first data row of a df report, kept verbatim.
type DiskInfo struct {
	// Path is the mount point that was queried.
	Path string `json:"path"`

	Filesystem string `json:"filesystem,omitempty"`
	Size       string `json:"size,omitempty"`
	Used       string `json:"used,omitempty"`
	Available  string `json:"available,omitempty"`
	Capacity   string `json:"capacity,omitempty"`

	// Present is true when the row had at least five fields.
	Present bool `json:"present"`
}

// Fields returns the five disk columns in report order.
func (d DiskInfo) Fields() []string {
	return []string{d.Filesystem, d.Size, d.Used, d.Available, d.Capacity}
}
