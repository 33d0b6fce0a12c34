// Package textutil provides the text primitives shared by the digest, topic,
// and quality packages: tokenization, shingling with Jaccard similarity,
// whitespace normalization, slug generation, and string list hygiene.
//
// Tokenization lowercases text, splits on non-alphanumeric characters, and
// filters tokens shorter than 3 characters. Shingles are contiguous token
// n-grams joined by a single space and collected into a set.
package textutil
