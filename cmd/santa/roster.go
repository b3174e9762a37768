package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/secretsanta/internal/draw"
	"github.com/mmynk/secretsanta/internal/models"
)

// rosterFile is the YAML layout read by "santa draw":
//
//	participants:
//	  - name: Alice
//	    phone: 555-123-4567
//	  - name: Bob
//	exclusions:
//	  Alice: [Bob]
type rosterFile struct {
	Participants []models.Participant `yaml:"participants"`
	Exclusions   map[string][]string  `yaml:"exclusions"`
}

// roster is a validated rosterFile.
type roster struct {
	Participants []models.Participant
	History      models.History
}

func (r roster) names() draw.Roster {
	names := make(draw.Roster, len(r.Participants))
	for i, p := range r.Participants {
		names[i] = p.Name
	}
	return names
}

func loadRoster(path string) (roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return roster{}, fmt.Errorf("failed to open roster: %w", err)
	}
	defer f.Close()

	r, err := parseRoster(f)
	if err != nil {
		return roster{}, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

func parseRoster(in io.Reader) (roster, error) {
	var file rosterFile
	dec := yaml.NewDecoder(in)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return roster{}, errors.New("roster is empty")
		}
		return roster{}, fmt.Errorf("failed to parse roster: %w", err)
	}

	members := make(map[string]bool, len(file.Participants))
	out := roster{History: models.History{}}
	for i, p := range file.Participants {
		p.Name = strings.TrimSpace(p.Name)
		p.Phone = strings.TrimSpace(p.Phone)
		if p.Name == "" {
			return roster{}, fmt.Errorf("participant %d has no name", i+1)
		}
		if members[p.Name] {
			return roster{}, fmt.Errorf("participant %q is listed twice", p.Name)
		}
		if err := models.ValidatePhone(p.Phone); err != nil {
			return roster{}, fmt.Errorf("participant %q: %w", p.Name, err)
		}
		members[p.Name] = true
		out.Participants = append(out.Participants, p)
	}

	// Add in participant order so errors are reported deterministically.
	for _, p := range out.Participants {
		for _, receiver := range file.Exclusions[p.Name] {
			if !members[receiver] {
				return roster{}, fmt.Errorf("exclusion %s → %s: %q is not a participant", p.Name, receiver, receiver)
			}
			if err := out.History.Add(p.Name, receiver); err != nil {
				return roster{}, fmt.Errorf("exclusion %s → %s: %w", p.Name, receiver, err)
			}
		}
	}
	for giver := range file.Exclusions {
		if !members[giver] {
			return roster{}, fmt.Errorf("exclusions for %q: not a participant", giver)
		}
	}

	return out, nil
}
