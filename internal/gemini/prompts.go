package gemini

import "fmt"

const translationPromptTemplate = `Translate the following English word or phrase to Māori. For output, return ONLY a raw JSON object with these fields and nothing else:

{
"translation": "...",   // just the translation, nothing else
"ipa": "...",           // the correct IPA pronunciation for the Māori translation
"phonetic": "...",      // a simple English phonetic spelling for the Māori translation
"type": "...",          // e.g., noun, verb, etc.
"domain": "...",        // e.g., greetings, number, weather, etc.
"example": "...",       // example usage in a sentence (in both Māori and English, if possible)
"notes": "..."          // cultural or usage notes (can be blank)
}

If you do not know the answer for a field, use an empty string (""). Do NOT use markdown or any code fences - just output the JSON.

Word or phrase: "%s"`

func translationPrompt(text string) string {
	return fmt.Sprintf(translationPromptTemplate, text)
}

const positiveNewsPrompt = `FOCUS ON POSITIVE NEWS ONLY: Select only positive, uplifting, and constructive news stories. Avoid negative news such as conflicts, tragedies, controversies, or problems. Focus on achievements, celebrations, cultural events, educational initiatives, business successes, and community developments.

Use live web search to find recent news from NZ sources. Translate title and summary to Māori, name them title_maori and summary_maori. If there is a thumbnail or image available include the link and name it image_url. Return a JSON array of up to 10 POSITIVE news items. Each should have 'title', 'content' and 'link'. Output ONLY the JSON array, no markdown or explanation.`
