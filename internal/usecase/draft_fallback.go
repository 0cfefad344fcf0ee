package usecase

import (
	"fmt"

	"github.com/electronicart/marketing-agent/internal/entity"
)

// FallbackDraft builds the template email used when no model is configured
// or the generation call fails. Deterministic: same lead, same text.
func FallbackDraft(name, company string, budget int, need string) *entity.Draft {
	target := company
	if target == "" {
		target = name
	}

	subject := fmt.Sprintf("Propozycja współpracy – %s", target)
	body := fmt.Sprintf(
		"Cześć %s,\n\n"+
			"Dzięki za wiadomość. Wstępnie brzmi to jak: %s.\n"+
			"Budżet, który podałeś/aś: %d zł.\n\n"+
			"Podeślę 2–3 warianty zakresu – czy pasuje rozmowa 10 minut dziś lub jutro?\n\n"+
			"Pozdrawiam\nKrzysztof",
		name, need, budget,
	)

	return &entity.Draft{Subject: subject, Body: body}
}
