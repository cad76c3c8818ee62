package generation

import "fmt"

// MaxNotesLength is the number of characters of the notes embedded in the
// prompt. Anything past it is dropped without regard to sentence boundaries.
const MaxNotesLength = 1500

const promptTemplate = "From the following text, create exactly 3 high-quality flashcards " +
	"with a clear question and detailed answer. \n" +
	"Return ONLY a valid JSON array in this format: " +
	`[{"question": "text", "answer": "text"}]` + "\n" +
	"Text: %s"

// BuildPrompt renders the instruction prompt for notes.
func BuildPrompt(notes string) string {
	return fmt.Sprintf(promptTemplate, truncateRunes(notes, MaxNotesLength))
}
