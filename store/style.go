package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"gearwright/copilot"
)

// StyleStore persists the single style profile as a JSON file. Load returns
// defaults when the file is absent; Save merges a partial update over the
// current profile and writes the full result.
type StyleStore struct {
	path string
	mu   sync.Mutex
}

func NewStyleStore(path string) *StyleStore {
	return &StyleStore{path: path}
}

func (s *StyleStore) Load() (copilot.StyleProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Save applies the partial update (lowercase JSON field names) over the
// stored profile and persists the merge. Known fields take string values;
// anything else is preserved untouched in the profile's extras.
func (s *StyleStore) Save(partial map[string]any) (copilot.StyleProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, err := s.loadLocked()
	if err != nil {
		return copilot.StyleProfile{}, err
	}
	for key, value := range partial {
		text, isString := value.(string)
		switch {
		case key == "tone" && isString:
			profile.Tone = text
		case key == "detail" && isString:
			profile.Detail = text
		case key == "emojis" && isString:
			profile.Emojis = text
		case key == "formatting" && isString:
			profile.Formatting = text
		default:
			if profile.Extra == nil {
				profile.Extra = map[string]any{}
			}
			profile.Extra[key] = value
		}
	}
	if err := writeJSONFile(s.path, profile); err != nil {
		return copilot.StyleProfile{}, fmt.Errorf("write style profile: %w", err)
	}
	return profile, nil
}

func (s *StyleStore) loadLocked() (copilot.StyleProfile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return copilot.DefaultStyleProfile(), nil
		}
		return copilot.StyleProfile{}, fmt.Errorf("read style profile: %w", err)
	}
	var profile copilot.StyleProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return copilot.StyleProfile{}, fmt.Errorf("parse style profile: %w", err)
	}
	backfillProfile(&profile)
	return profile, nil
}

func backfillProfile(profile *copilot.StyleProfile) {
	defaults := copilot.DefaultStyleProfile()
	if profile.Tone == "" {
		profile.Tone = defaults.Tone
	}
	if profile.Detail == "" {
		profile.Detail = defaults.Detail
	}
	if profile.Emojis == "" {
		profile.Emojis = defaults.Emojis
	}
	if profile.Formatting == "" {
		profile.Formatting = defaults.Formatting
	}
}
