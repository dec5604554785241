package boards

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/expr-lang/expr"
	"github.com/rs/zerolog/log"
	iso8601 "github.com/senseyeio/duration"
	"gopkg.in/yaml.v3"

	"github.com/mvgboard/mvgboard/pkg/departures"
)

// Board is one configured departure board - the server-side equivalent of a
// single display widget instance.
type Board struct {
	Name string `yaml:"name" json:"name"`

	Stop            string `yaml:"stop" json:"stop"`
	DestinationStop string `yaml:"destination-stop" json:"destinationStop,omitempty"`

	Lines        []string `yaml:"lines" json:"lines,omitempty"`
	Destinations []string `yaml:"destinations" json:"destinations,omitempty"`

	// Filter is an optional expression evaluated against each normalized
	// departure, eg `DelayMinutes < 10 && Line != "U6"`.
	Filter string `yaml:"filter" json:"filter,omitempty"`

	// Lookahead is an ISO8601 duration bounding how far ahead departures are
	// shown. Defaults to PT2H.
	Lookahead string `yaml:"lookahead" json:"lookahead,omitempty"`

	Identifier string `yaml:"identifier" json:"identifier"`
}

// BoardIdentifier falls back to the <stop>_<destination|none>_<name> scheme
// when no explicit identifier is configured, so two boards for the same stop
// with different headers never mix results.
func (b *Board) BoardIdentifier() string {
	if b.Identifier != "" {
		return b.Identifier
	}

	destination := b.DestinationStop
	if destination == "" {
		destination = "none"
	}

	return fmt.Sprintf("%s_%s_%s", b.Stop, destination, b.Name)
}

// RequestAt builds the dispatcher request for this board, compiling the
// filter expression and resolving the look-ahead window against now.
func (b *Board) RequestAt(now time.Time) (departures.Request, error) {
	request := departures.Request{
		StopID:            b.Stop,
		DestinationStopID: b.DestinationStop,
		LineFilter:        b.Lines,
		DestinationFilter: b.Destinations,
		Identifier:        b.BoardIdentifier(),
	}

	if b.Filter != "" {
		program, err := expr.Compile(b.Filter, expr.Env(departures.Departure{}), expr.AsBool())
		if err != nil {
			return departures.Request{}, fmt.Errorf("board %s has an invalid filter expression: %w", b.BoardIdentifier(), err)
		}
		request.Filter = program
	}

	if b.Lookahead != "" {
		lookahead, err := iso8601.ParseISO8601(b.Lookahead)
		if err != nil {
			return departures.Request{}, fmt.Errorf("board %s has an invalid lookahead duration: %w", b.BoardIdentifier(), err)
		}
		request.Lookahead = lookahead.Shift(now).Sub(now)
	}

	return request, nil
}

func (b *Board) validate() error {
	if b.Stop == "" {
		return errors.New("board is missing a stop identifier")
	}

	return nil
}

// BoardSet holds the boards loaded at startup, keyed by identifier.
type BoardSet struct {
	boards     []*Board
	identifier map[string]*Board
}

func (s *BoardSet) All() []*Board {
	return s.boards
}

func (s *BoardSet) Lookup(identifier string) *Board {
	return s.identifier[identifier]
}

// LoadDirectory walks a directory of YAML board definition files. Each file
// may hold multiple documents.
func LoadDirectory(directory string) (*BoardSet, error) {
	boardSet := &BoardSet{
		identifier: map[string]*Board{},
	}

	err := filepath.Walk(directory,
		func(path string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if fileInfo.IsDir() || filepath.Ext(path) != ".yaml" {
				return nil
			}

			log.Debug().Str("path", path).Msg("Loading boards file")

			boardsYaml, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			decoder := yaml.NewDecoder(bytes.NewReader(boardsYaml))

			for {
				var board Board
				if decoder.Decode(&board) != nil {
					break
				}

				if err := board.validate(); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				boardSet.boards = append(boardSet.boards, &board)
				boardSet.identifier[board.BoardIdentifier()] = &board
			}

			return nil
		})
	if err != nil {
		return nil, err
	}

	return boardSet, nil
}
