// Package quality scores a finished HTML artifact against five independent
// gates before it may reach customers.
//
// Gates:
//   - brandFidelity: brand colors, font, creator handle, no placeholder text
//   - distinctiveness: 4-word shingle Jaccard against the creator's prior catalog
//   - accessibility: lang, viewport, image alt text, headings, legacy tags
//   - contentDepth: word count against a per-product target plus structure markers
//   - evidenceLock: <!-- sources: ... --> comments covering the declared videos
//
// Each gate clamps its score to [0,100] and passes on its own threshold. The
// overall score is a weighted mean with weights renormalized to sum to 1; the
// artifact passes only when every gate passes. Evaluation is a pure function of
// its input and never fails; missing brand tokens or an empty catalog skip the
// corresponding checks rather than penalizing them.
//
// BuildFeedbackForPrompt renders an evaluation as remediation text for a
// regeneration prompt.
package quality
