package gesture

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/gocarina/gocsv"
)

// ErrNoFrames is returned when a recorded session holds no frames.
var ErrNoFrames = errors.New("session has no frames")

// emptyFrameHand marks a row that records a frame with no hands.
const emptyFrameHand = -1

// Limits on what a session file may describe.
const (
	MaxSessionHands = 8  // Hands per frame
	maxFrameGap     = 64 // Average frame-number span allowed per CSV row
)

// LandmarkRecord is one CSV row of a recorded landmark session.
type LandmarkRecord struct {
	Frame    int     `csv:"frame"`
	Hand     int     `csv:"hand"`
	Landmark int     `csv:"landmark"`
	X        float32 `csv:"x"`
	Y        float32 `csv:"y"`
	Z        float32 `csv:"z"`
}

// Session is an ordered list of recorded frames, each holding zero or more hands.
type Session [][]Hand

// ReadSession decodes a session from CSV. Frame numbers missing from the
// file are replayed as frames without hands.
func ReadSession(r io.Reader) (Session, error) {
	var records []LandmarkRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("decoding landmark csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoFrames
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Frame != b.Frame {
			return a.Frame < b.Frame
		}
		if a.Hand != b.Hand {
			return a.Hand < b.Hand
		}
		return a.Landmark < b.Landmark
	})

	first := records[0].Frame
	last := records[len(records)-1].Frame
	if first < 0 {
		return nil, fmt.Errorf("negative frame number %d", first)
	}
	if span := last - first; span < 0 || span >= len(records)*maxFrameGap {
		return nil, fmt.Errorf("frames %d..%d span too far for %d rows", first, last, len(records))
	}
	session := make(Session, last-first+1)

	for _, rec := range records {
		if rec.Hand == emptyFrameHand {
			continue
		}
		if rec.Hand < 0 || rec.Hand >= MaxSessionHands {
			return nil, fmt.Errorf("frame %d: hand index %d out of range [0,%d)", rec.Frame, rec.Hand, MaxSessionHands)
		}
		if rec.Landmark < 0 || rec.Landmark >= LandmarksPerHand {
			return nil, fmt.Errorf("frame %d: landmark index %d out of range [0,%d)", rec.Frame, rec.Landmark, LandmarksPerHand)
		}
		idx := rec.Frame - first
		hands := session[idx]
		for len(hands) <= rec.Hand {
			hands = append(hands, nil)
		}
		h := hands[rec.Hand]
		for len(h) <= rec.Landmark {
			h = append(h, Landmark{})
		}
		h[rec.Landmark] = Landmark{X: rec.X, Y: rec.Y, Z: rec.Z}
		hands[rec.Hand] = h
		session[idx] = hands
	}

	return session, nil
}

// LoadSession reads a session from a CSV file.
func LoadSession(path string) (Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening landmark session: %w", err)
	}
	defer f.Close()

	s, err := ReadSession(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// WriteSession encodes a session as CSV.
func WriteSession(w io.Writer, s Session) error {
	if len(s) == 0 {
		return ErrNoFrames
	}
	records := make([]LandmarkRecord, 0, len(s)*LandmarksPerHand)
	for fi, hands := range s {
		if len(hands) == 0 {
			records = append(records, LandmarkRecord{Frame: fi, Hand: emptyFrameHand, Landmark: 0})
			continue
		}
		for hi, h := range hands {
			for li, lm := range h {
				records = append(records, LandmarkRecord{
					Frame:    fi,
					Hand:     hi,
					Landmark: li,
					X:        lm.X,
					Y:        lm.Y,
					Z:        lm.Z,
				})
			}
		}
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("encoding landmark csv: %w", err)
	}
	return nil
}

// SaveSession writes a session to a CSV file.
func SaveSession(path string, s Session) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating landmark session: %w", err)
	}
	if err := WriteSession(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
