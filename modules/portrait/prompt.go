package portrait

import (
	"fmt"
	"strings"
)

// stylePrompts - fixed style-description fragment per art style
var stylePrompts = map[string]string{
	"oil": "Create an oil painting portrait in the style of classical military portraiture. " +
		"Use painterly realism with loose brushstrokes when viewed up close, but highly realistic at a distance. " +
		"Apply dramatic lighting with heavy use of contrast, often with spotlight-like illumination or glowing atmospheres. " +
		"Use muted, earthy palettes with lots of browns, greys, deep blues, and ochres, giving a grounded, natural feel. " +
		"Compose it cinematically, framed like a historical painting with strong use of depth, scale, and storytelling.",
	"watercolor": "Create an old watercolor portrait in the style of historical military watercolor paintings. " +
		"Use traditional watercolor techniques with dramatic lighting and muted, earthy palettes giving a grounded natural feel. " +
		"Apply an authentic old parchment/paper texture background. " +
		"The style should evoke vintage military watercolor portraits from historical archives.",
}

// BuildPrompt - compose the generation instruction from the historical
// context and the chosen art style. Deterministic: identical input yields an
// identical string.
func BuildPrompt(req *GenerationRequest) (string, error) {
	styleFragment, ok := stylePrompts[req.ArtStyle]
	if !ok {
		return "", NewError(KindInvalidInput, fmt.Sprintf("unknown art style: %q", req.ArtStyle), nil)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Transform this person into a historical military portrait from %s, serving as a %s in the %s %s. ",
		req.YearWar, req.Rank, req.Side, req.Branch)

	if req.ExtraDetails != "" {
		fmt.Fprintf(&b, "Additional details: %s. ", req.ExtraDetails)
	}

	b.WriteString(styleFragment)

	fmt.Fprintf(&b, " The portrait should look authentic to the historical period, with accurate military uniform, "+
		"insignia, and styling appropriate for the %s era. "+
		"Focus on creating a dignified, formal military portrait that captures the gravitas and honor of military "+
		"service during this historical period. "+
		"Maintain the person's key facial features, skin tone, hair color, and general appearance while transforming "+
		"them into the historical military context.",
		req.YearWar)

	return b.String(), nil
}
