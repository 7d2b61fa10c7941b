package layout

import "github.com/lvillar/bookletgen/theme"

// Transition names the block pair a gap sits between.
type Transition int

const (
	HeaderToDesc Transition = iota
	SectionToSection
	ModuleToTemplate
	ChapterToChapter
	AreaToArea
	TopicToTopic
	BlockToBlock
)

// Gap returns the spacing policy's gap for a transition.
func Gap(sp theme.Spacing, t Transition) float64 {
	switch t {
	case HeaderToDesc:
		return sp.HeaderToDesc
	case SectionToSection:
		return sp.SectionToSection
	case ModuleToTemplate:
		return sp.ModuleToTemplate
	case ChapterToChapter:
		return sp.ChapterToChapter
	case AreaToArea:
		return sp.AreaToArea
	case TopicToTopic:
		return sp.TopicToTopic
	default:
		return sp.Block
	}
}

// TemplateGap returns the gap after a template. A continuation
// follows as tightly as possible; a quiz earns a little air.
func TemplateGap(sp theme.Spacing, hadQuiz, nextContinues bool) float64 {
	switch {
	case nextContinues:
		return sp.TemplateToContinue
	case hadQuiz:
		return sp.TemplateAfterQuiz
	default:
		return sp.TemplateDefault
	}
}
