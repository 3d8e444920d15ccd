// Package oifits contains the data model of OIFits, the exchange format of optical interferometry data.
// Tables are schema-driven: each concrete kind (OI_TARGET, OI_ARRAY, OI_WAVELENGTH, OI_VIS, OI_VIS2, OI_T3)
// declares keyword and column descriptors, and stores its rows as typed nested slices. Measurement tables
// refer to their array and wavelength tables by name through a Container, and a Checker validates a
// Container without ever failing, accumulating rule violations instead. This root package is an excellent
// overview of the model; sibling packages load tables from JSON, snapshot containers and validate files in batch.
package oifits
