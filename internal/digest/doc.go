// Package digest compresses a raw transcript into a bounded, information-dense
// digest used as extraction input.
//
// A digest is the whitespace-normalized opening of the transcript followed by
// the highest-scoring sentences from the rest of it. Sentence scoring is a
// cheap lexical heuristic: instructional phrasing, second-person address,
// salient vocabulary, and a comfortable length band each add weight. It bounds
// the cost of the extraction call; it does not attempt semantic understanding.
package digest
