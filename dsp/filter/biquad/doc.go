// Package biquad provides second-order IIR sections, cascades of them and
// Butterworth low-pass design.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Sections are cascaded via
// [Chain] for higher orders. [ButterworthLP] designs the cascade used as the
// granular engine's optional tone filter.
package biquad
