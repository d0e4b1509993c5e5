package deck

import (
	"html/template"
	"strings"
)

// Anki card templates; {{Field Name}} is Anki's own syntax.
const (
	FrontTemplate = `{{Position}}
<br>
<br>
<span class='play'>{{Side to Move}} to Play</span>`

	BackTemplate = `{{FrontSide}}

<hr id=answer>

Solution: <b>{{Solution}}</b>
<hr>
Themes: <i>{{Themes}}</i>
<br>
Lichess: <u><a href={{Lichess Link}}>{{FEN}}</a></u>`
)

// Preview templates mirror the Anki ones for viewing a card outside Anki.
var (
	frontPreview = template.Must(template.New("front").Parse(`{{.Position}}
<br>
<br>
<span class='play'>{{.SideToMove}} to Play</span>`))

	backPreview = template.Must(template.New("back").Parse(`{{.Front}}

<hr id=answer>

Solution: <b>{{.Card.Solution}}</b>
<hr>
Themes: <i>{{.Card.Themes}}</i>
<br>
Lichess: <u><a href="{{.Card.LichessLink}}">{{.Card.FEN}}</a></u>`))
)

type previewCard struct {
	Position   template.HTML
	SideToMove string
}

// Front renders the question side of the card as HTML, showing the
// diagram found at imageSrc.
func (c Card) Front(imageSrc string) (string, error) {
	var sb strings.Builder
	err := frontPreview.Execute(&sb, previewCard{
		Position:   template.HTML(`<img src="` + template.HTMLEscapeString(imageSrc) + `">`),
		SideToMove: c.SideToMove,
	})
	return sb.String(), err
}

// Back renders the answer side of the card as HTML.
func (c Card) Back(imageSrc string) (string, error) {
	front, err := c.Front(imageSrc)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	err = backPreview.Execute(&sb, struct {
		Front template.HTML
		Card  Card
	}{template.HTML(front), c})
	return sb.String(), err
}
