// Package importer reads flashcard decks written in markdown.
//
// A deck file holds cards as "Q:" / "A:" blocks, optionally followed by a
// "T:" line of comma-separated tags. Blocks run until the next prefix or a
// "---" separator line, so questions and answers may span several lines. A
// "# " heading before the first card names the deck; otherwise the file name
// does. Directories are walked for *.md files, and git URLs are cloned (or
// pulled) into a local cache first.
package importer
