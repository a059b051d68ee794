// ABOUTME: Word model for vocabulary flashcards.
// ABOUTME: A deck is an ordered slice of Words supplied by a vocabulary source.
package models

// Word is a single flashcard entry.
type Word struct {
	ID            int    `json:"id" yaml:"id"`
	Word          string `json:"word" yaml:"word"`
	Meaning       string `json:"meaning" yaml:"meaning"`
	Pronunciation string `json:"pronunciation,omitempty" yaml:"pronunciation,omitempty"`
	Example       string `json:"example,omitempty" yaml:"example,omitempty"`
}
