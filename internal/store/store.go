// Package store persists the task collection and its companion
// complexity report under a project's .taskmaster/ directory.
//
// The store is a whole-file key-value boundary: load returns a
// collection value, save overwrites the document. No locking and no
// version token — a single synchronous writer is assumed, and the
// last full-file write wins.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/algae514/task-master-ai-algae/internal/task"
)

const (
	// Dir is the project data directory.
	Dir = ".taskmaster"
	// TasksFile holds the task collection.
	TasksFile = "tasks.json"
	// ReportFile holds the complexity analysis companion document.
	ReportFile = "complexity-report.json"
)

// ErrNotFound reports a missing document (project not initialized, or
// no report generated yet).
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for task documents.
// Abstracted for testability (DIP).
type Store interface {
	InitProject(projectRoot, projectName string) (*task.File, error)
	LoadTasks(projectRoot string) (*task.File, error)
	SaveTasks(projectRoot string, f *task.File) error
	LoadReport(projectRoot string) (*task.ComplexityReport, error)
	SaveReport(projectRoot string, r *task.ComplexityReport) error
}

// FileStore implements Store using the local filesystem.
type FileStore struct{}

// NewFileStore creates a filesystem-backed task store.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// DataPath returns the absolute path to the .taskmaster/ directory.
func DataPath(projectRoot string) string {
	return filepath.Join(projectRoot, Dir)
}

// TasksPath returns the absolute path to tasks.json.
func TasksPath(projectRoot string) string {
	return filepath.Join(DataPath(projectRoot), TasksFile)
}

// ReportPath returns the absolute path to complexity-report.json.
func ReportPath(projectRoot string) string {
	return filepath.Join(DataPath(projectRoot), ReportFile)
}

// InitProject scaffolds .taskmaster/ with an empty collection. Fails
// if the project is already initialized.
func (fs *FileStore) InitProject(projectRoot, projectName string) (*task.File, error) {
	path := TasksPath(projectRoot)
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("project already initialized at %s", path)
	}

	f := &task.File{
		Tasks: []task.Task{},
		Metadata: task.Metadata{
			ProjectName: projectName,
			TotalTasks:  0,
			GeneratedAt: task.Now(),
		},
	}
	if err := fs.SaveTasks(projectRoot, f); err != nil {
		return nil, err
	}
	return f, nil
}

// LoadTasks reads and parses the task collection.
func (fs *FileStore) LoadTasks(projectRoot string) (*task.File, error) {
	data, err := os.ReadFile(TasksPath(projectRoot))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("tasks file %s: %w", TasksPath(projectRoot), ErrNotFound)
		}
		return nil, fmt.Errorf("reading tasks file: %w", err)
	}

	var f task.File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing tasks file: %w", err)
	}
	return &f, nil
}

// SaveTasks overwrites the task collection, refreshing the task count.
func (fs *FileStore) SaveTasks(projectRoot string, f *task.File) error {
	f.Metadata.TotalTasks = len(f.Tasks)

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling tasks: %w", err)
	}

	dir := DataPath(projectRoot)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := os.WriteFile(TasksPath(projectRoot), data, 0o644); err != nil {
		return fmt.Errorf("writing tasks file: %w", err)
	}
	return nil
}

// LoadReport reads the complexity report companion document.
func (fs *FileStore) LoadReport(projectRoot string) (*task.ComplexityReport, error) {
	data, err := os.ReadFile(ReportPath(projectRoot))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("complexity report %s: %w", ReportPath(projectRoot), ErrNotFound)
		}
		return nil, fmt.Errorf("reading complexity report: %w", err)
	}

	var r task.ComplexityReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing complexity report: %w", err)
	}
	return &r, nil
}

// SaveReport overwrites the complexity report. Callers that persist a
// batch must Merge into a loaded report first so analyses outside the
// batch survive.
func (fs *FileStore) SaveReport(projectRoot string, r *task.ComplexityReport) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling complexity report: %w", err)
	}

	dir := DataPath(projectRoot)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := os.WriteFile(ReportPath(projectRoot), data, 0o644); err != nil {
		return fmt.Errorf("writing complexity report: %w", err)
	}
	return nil
}
