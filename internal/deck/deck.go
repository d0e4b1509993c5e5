package deck

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Deck is an ordered set of cards keyed by GUID. It is not safe for
// concurrent use.
type Deck struct {
	Name  string `json:"name"`
	Cards []Card `json:"cards"`

	index map[string]int
}

// New creates an empty deck.
func New(name string) *Deck {
	return &Deck{Name: name, Cards: []Card{}, index: make(map[string]int)}
}

// Add appends a card, or replaces the card with the same GUID. It reports
// whether the card was new.
func (d *Deck) Add(card Card) bool {
	if d.index == nil {
		d.index = make(map[string]int, len(d.Cards))
		for i, c := range d.Cards {
			d.index[c.GUID] = i
		}
	}
	if i, ok := d.index[card.GUID]; ok {
		d.Cards[i] = card
		return false
	}
	d.index[card.GUID] = len(d.Cards)
	d.Cards = append(d.Cards, card)
	return true
}

// Len returns the number of cards.
func (d *Deck) Len() int {
	return len(d.Cards)
}

// WriteNotes writes the deck in Anki's plain-text import format: a header
// naming the separator, the HTML mode, the GUID and tags columns and the
// deck, then one tab-separated row per card.
func (d *Deck) WriteNotes(w io.Writer) error {
	columns := append([]string{"GUID"}, FieldNames...)
	columns = append(columns, "Tags")
	header := []string{
		"#separator:tab",
		"#html:true",
		"#columns:" + strings.Join(columns, "\t"),
		"#guid column:1",
		fmt.Sprintf("#tags column:%d", len(columns)),
		"#deck:" + d.Name,
	}
	if _, err := io.WriteString(w, strings.Join(header, "\n")+"\n"); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	for _, card := range d.Cards {
		row := append([]string{card.GUID}, card.Fields()...)
		row = append(row, strings.Join(card.Tags, " "))
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the deck as indented JSON.
func (d *Deck) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// Paths are the files Save writes.
type Paths struct {
	Notes  string
	JSON   string
	Images string
}

// PathsFor returns the output layout of a deck under dir.
func PathsFor(dir, name string) Paths {
	base := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	return Paths{
		Notes:  filepath.Join(dir, base+".txt"),
		JSON:   filepath.Join(dir, base+".json"),
		Images: filepath.Join(dir, "images"),
	}
}

// Save writes the notes file, and the JSON file when withJSON is set,
// into dir.
func (d *Deck) Save(dir string, withJSON bool) (Paths, error) {
	paths := PathsFor(dir, d.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return paths, err
	}
	if err := writeFile(paths.Notes, d.WriteNotes); err != nil {
		return paths, err
	}
	if withJSON {
		if err := writeFile(paths.JSON, d.WriteJSON); err != nil {
			return paths, err
		}
	}
	return paths, nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
