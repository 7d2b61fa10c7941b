package booklet_test

import (
	"os"

	"github.com/lvillar/bookletgen/booklet"
	"github.com/lvillar/bookletgen/surface"
	"github.com/lvillar/bookletgen/theme"
)

func Example() {
	course := `{"areas":[{"name":"Segnaletica","chapters":[{"name":"Segnali di pericolo","topics":[{"name":"Precedenze","modules":[{"name":"Incroci","templates":[{"id":"1","text":["Dare la precedenza ai veicoli provenienti da destra."]}]}]}]}]}]}`

	doc, err := booklet.Parse([]byte(course))
	if err != nil {
		panic(err)
	}
	th := theme.Default()
	surf := surface.NewHeadless(th.Page.Width, th.Page.Height)
	if err := booklet.New(th).Generate(doc, surf); err != nil {
		panic(err)
	}
	surf.Output(os.Stdout)
	// Output: headless: 1 pages
}
