package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
)

// Record kinds, stored in the "kind" field of every line
const (
	KindHeader  = "header"
	KindFrame   = "frame"
	KindTrailer = "trailer"
)

var (
	ErrNoHeader    = errors.New("replay has no header")
	ErrUnknownKind = errors.New("unknown replay record kind")
)

// Write encodes r as JSON lines: a header, one line per frame and, for a
// finished combat, a trailer
func Write(w io.Writer, r *Replay) error {
	records := make([]map[string]interface{}, 0, len(r.Frames)+2)

	startedAt, err := encodeWellKnown(timestamppb.New(r.Header.StartedAt))
	if err != nil {
		return fmt.Errorf("encode start time: %w", err)
	}
	records = append(records, map[string]interface{}{
		"kind":             KindHeader,
		"combat_id":        r.Header.CombatID,
		"width":            r.Header.Width,
		"height":           r.Header.Height,
		"elf_attack_bonus": r.Header.ElfAttackBonus,
		"mode":             r.Header.Mode,
		"started_at":       startedAt,
		"board":            r.Header.Board,
	})

	for _, f := range r.Frames {
		units := make([]interface{}, len(f.Units))
		for i, u := range f.Units {
			units[i] = map[string]interface{}{
				"faction": u.Faction.String(),
				"x":       u.Pos.X,
				"y":       u.Pos.Y,
				"hp":      u.HP,
			}
		}
		records = append(records, map[string]interface{}{
			"kind":     KindFrame,
			"round":    f.Round,
			"complete": f.Complete,
			"board":    f.Board,
			"units":    units,
			"total_hp": f.TotalHP,
		})
	}

	if t := r.Trailer; t != nil {
		duration, err := encodeWellKnown(durationpb.New(t.Duration))
		if err != nil {
			return fmt.Errorf("encode duration: %w", err)
		}
		records = append(records, map[string]interface{}{
			"kind":             KindTrailer,
			"winner":           t.Winner,
			"completed_rounds": t.CompletedRounds,
			"total_hp":         t.TotalHP,
			"score":            t.Score,
			"elf_died":         t.ElfDied,
			"aborted":          t.Aborted,
			"duration":         duration,
		})
	}

	bw := bufio.NewWriter(w)
	for _, rec := range records {
		s, err := structpb.NewStruct(rec)
		if err != nil {
			return fmt.Errorf("build %s record: %w", rec["kind"], err)
		}
		data, err := protojson.Marshal(s)
		if err != nil {
			return fmt.Errorf("marshal %s record: %w", rec["kind"], err)
		}
		if _, err := bw.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("write replay: %w", err)
		}
	}
	return bw.Flush()
}

// Read decodes a replay written by Write
func Read(r io.Reader) (*Replay, error) {
	var out Replay
	haveHeader := false

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		data := scanner.Bytes()
		if len(data) == 0 {
			continue
		}

		var s structpb.Struct
		if err := protojson.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("line %d: failed to unmarshal record: %w", line, err)
		}
		rec := record{s.GetFields()}

		switch kind := rec.str("kind"); kind {
		case KindHeader:
			startedAt, err := decodeTimestamp(rec.str("started_at"))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			out.Header = Header{
				CombatID:       rec.str("combat_id"),
				Width:          rec.num("width"),
				Height:         rec.num("height"),
				ElfAttackBonus: rec.num("elf_attack_bonus"),
				Mode:           rec.str("mode"),
				StartedAt:      startedAt,
				Board:          rec.str("board"),
			}
			haveHeader = true
		case KindFrame:
			if !haveHeader {
				return nil, fmt.Errorf("line %d: %w", line, ErrNoHeader)
			}
			units, err := decodeUnits(rec.fields["units"].GetListValue().GetValues())
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			out.Frames = append(out.Frames, Frame{
				Round:    rec.num("round"),
				Complete: rec.flag("complete"),
				Board:    rec.str("board"),
				Units:    units,
				TotalHP:  rec.num("total_hp"),
			})
		case KindTrailer:
			if !haveHeader {
				return nil, fmt.Errorf("line %d: %w", line, ErrNoHeader)
			}
			duration, err := decodeDuration(rec.str("duration"))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			out.Trailer = &Trailer{
				Winner:          rec.str("winner"),
				CompletedRounds: rec.num("completed_rounds"),
				TotalHP:         rec.num("total_hp"),
				Score:           rec.num("score"),
				ElfDied:         rec.flag("elf_died"),
				Aborted:         rec.flag("aborted"),
				Duration:        duration,
			}
		default:
			return nil, fmt.Errorf("line %d: %w %q", line, ErrUnknownKind, kind)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading replay: %w", err)
	}
	if !haveHeader {
		return nil, ErrNoHeader
	}
	return &out, nil
}

// SaveFile writes r to path, replacing any existing file
func SaveFile(path string, r *Replay) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create replay file: %w", err)
	}
	if err := Write(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFile reads a replay from path
func LoadFile(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

type record struct {
	fields map[string]*structpb.Value
}

func (r record) str(key string) string { return r.fields[key].GetStringValue() }
func (r record) num(key string) int    { return int(r.fields[key].GetNumberValue()) }
func (r record) flag(key string) bool  { return r.fields[key].GetBoolValue() }

func decodeUnits(values []*structpb.Value) ([]core.Unit, error) {
	units := make([]core.Unit, 0, len(values))
	for _, v := range values {
		u := record{v.GetStructValue().GetFields()}
		f, err := core.ParseFaction(u.str("faction"))
		if err != nil {
			return nil, err
		}
		units = append(units, core.Unit{
			Faction: f,
			HP:      u.num("hp"),
			Pos:     core.Position{X: u.num("x"), Y: u.num("y")},
		})
	}
	return units, nil
}

// encodeWellKnown renders a well-known type in its canonical JSON string
// form, e.g. "2026-01-02T15:04:05Z" or "1.5s"
func encodeWellKnown(m proto.Message) (string, error) {
	data, err := protojson.Marshal(m)
	if err != nil {
		return "", err
	}
	return strconv.Unquote(string(data))
}

func decodeTimestamp(s string) (time.Time, error) {
	var ts timestamppb.Timestamp
	if err := protojson.Unmarshal([]byte(strconv.Quote(s)), &ts); err != nil {
		return time.Time{}, fmt.Errorf("bad started_at %q: %w", s, err)
	}
	return ts.AsTime(), nil
}

func decodeDuration(s string) (time.Duration, error) {
	var d durationpb.Duration
	if err := protojson.Unmarshal([]byte(strconv.Quote(s)), &d); err != nil {
		return 0, fmt.Errorf("bad duration %q: %w", s, err)
	}
	return d.AsDuration(), nil
}
