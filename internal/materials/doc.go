// Package materials provides the embedded optical-constant datasets for the
// constituent materials of dust mixtures.
//
// Datasets are stored as lnk text tables (wavelength in micron, n, k) and
// exposed through a Catalog keyed by short material names.
package materials
