// Package nlp holds the linguistic annotator and sentiment scorer bindings.
//
//   - prose: in-process tokenizer, tagger, segmenter and entity extractor
//   - vader: lexicon-based sentiment, in process
//   - gcnl: Google Cloud Natural Language for both annotation and sentiment
//
// Every binding reports universal part-of-speech tags and OntoNotes-style
// entity labels so the metadata extractor sees one vocabulary.
package nlp
