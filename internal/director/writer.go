package director

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DocumentVersion is written into every exported schedule.
const DocumentVersion = "1.0"

// Export converts a schedule into its document form.
func Export(s *Schedule) *Document {
	doc := &Document{Version: DocumentVersion, Total: s.Total}

	for _, sc := range s.Scenes {
		rec := SceneRecord{Name: sc.Name, Start: sc.Start, End: sc.End}
		if !sc.Window.IsZero() {
			w := sc.Window
			rec.Window = &w
		}
		doc.Scenes = append(doc.Scenes, rec)
	}

	for _, b := range s.Beats {
		doc.Beats = append(doc.Beats, BeatRecord{
			Scene: b.Scene, Index: b.Index, Label: b.Label,
			Start: b.Start, End: b.End, Hold: b.Hold,
		})
	}

	for _, e := range s.Entries {
		rec := EntryRecord{
			Scene:    e.Scene,
			Beat:     e.Beat,
			Entity:   e.Clip.Target.Entity.Name,
			Index:    e.Clip.Target.Index,
			Property: e.Clip.Property.String(),
			Start:    e.Start,
			End:      e.End,
			Easing:   e.Clip.Easing.Name(),
			Relative: e.Clip.Relative,
			Path:     e.Path,
		}
		if p := e.Clip.Target.Part(); p != nil {
			rec.Part = p.Name
		}
		doc.Entries = append(doc.Entries, rec)
	}

	return doc
}

// WriteSchedule writes a schedule document to a YAML file
func WriteSchedule(doc *Document, path string) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// ReadDocument reads a schedule document from a YAML file
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if doc.Version != DocumentVersion {
		return nil, fmt.Errorf("%s: unsupported schedule version %q", path, doc.Version)
	}

	return &doc, nil
}
