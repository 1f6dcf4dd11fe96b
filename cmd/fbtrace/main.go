package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tinyrange/minifb/internal/frametrace"
	"github.com/tinyrange/minifb/internal/keys"
)

type kindRecord struct {
	Kind  frametrace.Kind
	Count int
	Sum   time.Duration
	Min   time.Duration
	Max   time.Duration
}

func (r *kindRecord) String() string {
	return fmt.Sprintf("% 10s count=% 8d sum=% 16s min=% 16s max=% 16s avg=% 16s",
		r.Kind, r.Count,
		r.Sum,
		r.Min,
		r.Max,
		r.Sum/time.Duration(r.Count),
	)
}

func (r *kindRecord) Add(duration time.Duration) {
	r.Count++
	r.Sum += duration
	if r.Min == 0 || duration < r.Min {
		r.Min = duration
	}
	if r.Max == 0 || duration > r.Max {
		r.Max = duration
	}
}

func isKeyEvent(k frametrace.Kind) bool {
	return k == frametrace.KindKeyDown || k == frametrace.KindKeyUp
}

func formatEntry(e frametrace.Entry) string {
	if isKeyEvent(e.Kind) {
		return fmt.Sprintf("%s %s at=%s", e.Kind, keys.Key(e.Arg), e.Duration)
	}
	return fmt.Sprintf("%s frame=%d %s", e.Kind, e.Arg, e.Duration)
}

type keyCount struct {
	Key     keys.Key
	Presses int
}

type summary struct {
	// Kinds holds the timed kinds in first-seen order.
	Kinds []*kindRecord
	// Keys counts key presses in first-pressed order.
	Keys []keyCount
}

func summarize(r io.Reader) (*summary, error) {
	s := &summary{}
	records := map[frametrace.Kind]*kindRecord{}
	keyIndex := map[keys.Key]int{}

	err := frametrace.ReadAll(r, func(e frametrace.Entry) error {
		if isKeyEvent(e.Kind) {
			if e.Kind == frametrace.KindKeyDown {
				k := keys.Key(e.Arg)
				i, ok := keyIndex[k]
				if !ok {
					i = len(s.Keys)
					keyIndex[k] = i
					s.Keys = append(s.Keys, keyCount{Key: k})
				}
				s.Keys[i].Presses++
			}
			return nil
		}
		record, ok := records[e.Kind]
		if !ok {
			record = &kindRecord{Kind: e.Kind}
			records[e.Kind] = record
			s.Kinds = append(s.Kinds, record)
		}
		record.Add(e.Duration)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)

	filename := fs.String("filename", "", "Frame trace file to read")
	sums := fs.Bool("sums", false, "Print per-kind duration sums and key counts")

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	if *filename == "" {
		fs.Usage()
		os.Exit(1)
	}

	f, err := os.Open(*filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open frame trace: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if *sums {
		result, err := summarize(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read frame trace: %v\n", err)
			os.Exit(1)
		}
		for _, record := range result.Kinds {
			fmt.Printf("%s\n", record.String())
		}
		for _, kc := range result.Keys {
			fmt.Printf("% 10s presses=%d\n", kc.Key, kc.Presses)
		}
	} else {
		if err := frametrace.ReadAll(f, func(e frametrace.Entry) error {
			fmt.Printf("%s\n", formatEntry(e))
			return nil
		}); err != nil {
			fmt.Fprintf(os.Stderr, "failed to read frame trace: %v\n", err)
			os.Exit(1)
		}
	}
}
