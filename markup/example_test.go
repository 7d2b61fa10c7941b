package markup_test

import (
	"fmt"

	"github.com/lvillar/bookletgen/markup"
	"github.com/lvillar/bookletgen/theme"
)

func ExampleParseMarkdown() {
	tip := theme.RGB{R: 0, G: 174, B: 0}
	runs := markup.ParseMarkdown("dare la **precedenza** a *tutti* i veicoli", tip)
	for _, r := range runs {
		fmt.Printf("%q bold=%v italic=%v\n", r.Text, r.Style.Bold, r.Style.Italic)
	}
	// Output:
	// "dare la " bold=false italic=false
	// "precedenza" bold=true italic=false
	// " a " bold=false italic=false
	// "tutti" bold=false italic=true
	// " i veicoli" bold=false italic=false
}

func ExampleNormalizeUnits() {
	fmt.Println(markup.NormalizeUnits("una superficie di 25 cm2"))
	// Output: una superficie di 25 cm²
}
