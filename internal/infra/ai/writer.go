package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/electronicart/marketing-agent/internal/entity"
	"github.com/electronicart/marketing-agent/internal/usecase"
)

const systemPrompt = "Jesteś doświadczonym sprzedawcą usług produkcji wideo i streamingu B2B (premium, ale ludzko). " +
	"Piszesz po polsku, konkretnie, bez korpo-tonu. " +
	"Tworzysz mail, który brzmi jak od człowieka: krótko, celnie, z jednym pytaniem domykającym. " +
	"Nie obiecuj rzeczy bez ustalenia zakresu."

const defaultSubject = "Propozycja współpracy"

// ChatClient is the slice of the OpenAI client the writer needs.
type ChatClient interface {
	ChatCompletion(ctx context.Context, system, user string, temperature float64) (string, error)
}

// Writer drafts outbound emails through a chat model. A nil client means no
// API key was configured and every Generate call returns ErrDraftNotConfigured.
type Writer struct {
	client ChatClient
}

// Compile-time check that Writer satisfies usecase.DraftService.
var _ usecase.DraftService = (*Writer)(nil)

func NewWriter(client ChatClient) *Writer {
	return &Writer{client: client}
}

func (w *Writer) Generate(ctx context.Context, req usecase.DraftRequest) (*entity.Draft, error) {
	if w.client == nil {
		return nil, usecase.ErrDraftNotConfigured
	}

	text, err := w.client.ChatCompletion(ctx, systemPrompt, buildUserPrompt(req), 0.8)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	subject, body := parseDraft(text)
	return &entity.Draft{Subject: subject, Body: body}, nil
}

func buildUserPrompt(req usecase.DraftRequest) string {
	company := req.Company
	if company == "" {
		company = "brak"
	}

	return fmt.Sprintf(`Dane leada:
- Imię: %s
- Email: %s
- Firma: %s
- Potrzeba: %s
- Budżet: %d PLN
Segment: %s

Zadanie:
1) Wygeneruj temat maila (max 60 znaków).
2) Napisz treść maila (120–200 słów), z:
   - 1 zdaniem personalizacji (odnieś się do 'Potrzeba')
   - 2–3 krótkimi wariantami (Basic/Standard/Premium) opisanymi jednym zdaniem każdy (bez cen, tylko zakres)
   - 1 pytaniem domykającym (termin + doprecyzowanie)
3) Zakończ podpisem: "Krzysztof | ElectronicArt".
Zwróć wynik w formacie:
SUBJECT: ...
BODY:
...`,
		req.Name, req.Email, company, req.Need, req.Budget, req.SegmentLabel)
}

// parseDraft splits the model output on the SUBJECT:/BODY: markers. Without
// both markers in order, the whole text becomes the body under a generic
// subject.
func parseDraft(text string) (subject, body string) {
	subject = defaultSubject
	body = strings.TrimSpace(text)

	si := strings.Index(text, "SUBJECT:")
	bi := strings.Index(text, "BODY:")
	if si >= 0 && bi > si {
		subject = strings.TrimSpace(text[si+len("SUBJECT:") : bi])
		body = strings.TrimSpace(text[bi+len("BODY:"):])
	}

	return subject, body
}
