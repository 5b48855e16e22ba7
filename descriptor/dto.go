package descriptor

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/brettbedarf/treefs"
	"gopkg.in/yaml.v3"
)

// EntryType valid types are FileEntryType "file" and DirEntryType "dir"
type EntryType string

const (
	FileEntryType EntryType = "file"
	DirEntryType  EntryType = "dir"
)

// EntryDTO is the JSON and YAML representation of [Entry].
// Type may be omitted: entries with content are files, the rest directories.
type EntryDTO struct {
	Type    EntryType `json:"type,omitempty" yaml:"type,omitempty"`
	Path    string    `json:"path" yaml:"path"`
	Content *string   `json:"content,omitempty" yaml:"content,omitempty"`
}

// DecodeJSON decodes a JSON array of [EntryDTO]
func DecodeJSON(r io.Reader) ([]Entry, error) {
	var dtos []EntryDTO
	if err := json.NewDecoder(r).Decode(&dtos); err != nil {
		return nil, malformed(err)
	}
	return convertDTOs(dtos)
}

// DecodeYAML decodes a YAML sequence of [EntryDTO]
func DecodeYAML(r io.Reader) ([]Entry, error) {
	var dtos []EntryDTO
	if err := yaml.NewDecoder(r).Decode(&dtos); err != nil && !errors.Is(err, io.EOF) {
		return nil, malformed(err)
	}
	return convertDTOs(dtos)
}

func convertDTOs(dtos []EntryDTO) ([]Entry, error) {
	entries := make([]Entry, 0, len(dtos))
	for i, dto := range dtos {
		entry, err := convertDTO(dto)
		if err != nil {
			return nil, err
		}
		entry.Pos = i + 1
		entries = append(entries, entry)
	}
	return entries, nil
}

func convertDTO(dto EntryDTO) (Entry, error) {
	typ := dto.Type
	if typ == "" {
		typ = DirEntryType
		if dto.Content != nil {
			typ = FileEntryType
		}
	}

	switch typ {
	case FileEntryType:
		entry := Entry{Path: dto.Path, IsFile: true}
		if dto.Content != nil {
			entry.Content = []byte(*dto.Content)
		}
		return entry, nil
	case DirEntryType:
		if dto.Content != nil {
			return Entry{}, treefs.NewError(treefs.InvalidArgument, dto.Path, "directory entry cannot have content")
		}
		return Entry{Path: dto.Path}, nil
	default:
		return Entry{}, treefs.NewError(treefs.InvalidArgument, dto.Path, "unknown entry type %q", dto.Type)
	}
}

func malformed(err error) error {
	return &treefs.Error{Kind: treefs.InvalidArgument, Msg: "malformed descriptor", Err: err}
}
