package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/windrow-lab/windrow/internal/schema"
)

// FileSystemRepository implements schema.Repository using the local file
// system. It expects a directory structure: root/{dataset}/v{version}.[yaml|proto]
// YAML files take precedence over protobuf files if both exist.
type FileSystemRepository struct {
	rootDir string
}

// NewFileSystemRepository creates a new file system backed repository.
func NewFileSystemRepository(rootDir string) *FileSystemRepository {
	return &FileSystemRepository{
		rootDir: rootDir,
	}
}

// Create is not supported in read-only file system mode.
// Developers should add .yaml or .proto files directly to the disk.
func (r *FileSystemRepository) Create(ctx context.Context, ds *schema.Dataset) error {
	ext := ".yaml"
	if ds.Format == schema.FormatProtobuf {
		ext = ".proto"
	}
	return fmt.Errorf("create not supported in filesystem mode: please add %s file directly to %s/%s/v%d%s",
		ext, r.rootDir, ds.Name, ds.Version, ext)
}

// Get retrieves a dataset schema from the file system.
// YAML files take precedence over protobuf files.
// Warns if both formats exist for the same version.
func (r *FileSystemRepository) Get(ctx context.Context, key schema.Key) (*schema.Dataset, error) {
	yamlPath := filepath.Join(r.rootDir, key.Name, fmt.Sprintf("v%d.yaml", key.Version))
	protoPath := filepath.Join(r.rootDir, key.Name, fmt.Sprintf("v%d.proto", key.Version))

	// Check which files exist
	yamlExists := fileExists(yamlPath)
	protoExists := fileExists(protoPath)

	// Warn if both exist (format conflict)
	if yamlExists && protoExists {
		slog.Warn("Both .yaml and .proto exist for dataset schema - using .yaml (precedence rule)",
			"dataset", key.Name, "version", key.Version)
	}

	// Try YAML first
	if yamlExists {
		content, err := os.ReadFile(yamlPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read YAML schema: %w", err)
		}
		return r.buildDataset(key, content, schema.FormatYaml), nil
	}

	// Fallback to protobuf
	if protoExists {
		content, err := os.ReadFile(protoPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read protobuf schema: %w", err)
		}
		return r.buildDataset(key, content, schema.FormatProtobuf), nil
	}

	return nil, schema.ErrNotFound
}

// buildDataset constructs a schema.Dataset object from file content.
func (r *FileSystemRepository) buildDataset(key schema.Key, content []byte, format schema.Format) *schema.Dataset {
	return &schema.Dataset{
		ID:          fmt.Sprintf("%s-%d", key.Name, key.Version),
		Name:        key.Name,
		Version:     key.Version,
		Format:      format,
		Definition:  content,
		Fingerprint: schema.ComputeFingerprint(content),
		State:       schema.StateActive, // Files on disk are always considered active
		StrictMode:  true,               // Default to strict for file-based schemas
		CreatedAt:   time.Now(),         // Synthetic
	}
}

// fileExists checks if a file exists at the given path.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// List scans the directory for dataset schemas matching the criteria.
func (r *FileSystemRepository) List(ctx context.Context, name string) ([]*schema.Dataset, error) {
	var result []*schema.Dataset

	// If a dataset name is provided, we only check that specific directory
	if name != "" {
		datasets, err := r.scanDatasetDir(name, filepath.Join(r.rootDir, name))
		if err != nil {
			return nil, err
		}
		result = append(result, datasets...)
		return result, nil
	}

	// Otherwise, walk the root directory to find all datasets
	entries, err := os.ReadDir(r.rootDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*schema.Dataset{}, nil
		}
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			dsName := entry.Name()
			datasets, err := r.scanDatasetDir(dsName, filepath.Join(r.rootDir, dsName))
			if err != nil {
				return nil, err
			}
			result = append(result, datasets...)
		}
	}

	return result, nil
}

func (r *FileSystemRepository) scanDatasetDir(name, dirPath string) ([]*schema.Dataset, error) {
	var datasets []*schema.Dataset
	seenVersions := make(map[int]bool) // Track versions to avoid duplicates

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []*schema.Dataset{}, nil
		}
		return nil, err
	}

	// Scan for both .yaml and .proto files
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "v") {
			continue
		}

		var version int

		// Check for .yaml or .proto extension
		if strings.HasSuffix(entry.Name(), ".yaml") {
			versionStr := strings.TrimSuffix(strings.TrimPrefix(entry.Name(), "v"), ".yaml")
			v, err := strconv.Atoi(versionStr)
			if err != nil {
				continue // Skip invalid filenames
			}
			version = v
		} else if strings.HasSuffix(entry.Name(), ".proto") {
			versionStr := strings.TrimSuffix(strings.TrimPrefix(entry.Name(), "v"), ".proto")
			v, err := strconv.Atoi(versionStr)
			if err != nil {
				continue // Skip invalid filenames
			}
			version = v
		} else {
			continue // Not a schema file
		}

		// Skip if we've already loaded this version (YAML takes precedence)
		if seenVersions[version] {
			continue
		}

		key := schema.Key{Name: name, Version: version}
		// Reuse Get logic to read file and build object (handles YAML precedence)
		ds, err := r.Get(context.Background(), key)
		if err == nil {
			datasets = append(datasets, ds)
			seenVersions[version] = true
		}
	}
	return datasets, nil
}

// UpdateState is not supported in read-only mode.
func (r *FileSystemRepository) UpdateState(ctx context.Context, key schema.Key, state schema.State) error {
	return fmt.Errorf("update state not supported in filesystem mode")
}

// Delete is not supported in read-only mode.
func (r *FileSystemRepository) Delete(ctx context.Context, key schema.Key) error {
	return fmt.Errorf("delete not supported in filesystem mode: please remove the file")
}
