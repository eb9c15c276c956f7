// Package domain models Hawai'i Wai Ola volunteer water-quality samples.
//
// # Data Source
//
// Samples are collected by volunteer teams at shoreline sites around Hawai'i
// Island and exported as a single CSV (historically "hwo_data_1223.csv").
// Each row is one visit to one site on one date.
//
// # Column Conventions
//
// Identity and position:
//
//	SiteName  free text, e.g. "Kona Beach", "Wailoa Park"
//	Date      calendar date, ISO ("2023-04-17") or US ("4/17/2023")
//	Lat/Long  WGS-84 decimal degrees; longitudes are negative (west)
//
// Measurements (see [Fields] for labels and units):
//
//	Temp, Salinity, DO, DO_sat, pH, Turbidity, TotalN, TotalP, Entero
//
// Lab values are sometimes reported as text ("<0.5", "NA", "ND") or left
// blank. Anything that does not parse as a float is treated as missing and
// later replaced by the site mean.
//
// # Site Names
//
// The display name drops the literal words "Beach" and "Park" wherever they
// occur, without trimming, so "Kona Beach" becomes "Kona ". Two raw names can
// collapse to the same display name; see [NormalizeSiteName].
//
// # Regions
//
// Regions are coordinate thresholds, not stored attributes:
//
//	Hilo          longitude > -155.1
//	Kona          longitude < -155.9
//	South Kohala  latitude  >  19.9
//
// The thresholds overlap in principle, so a row may belong to more than one
// region. Filtering is the OR of the selected regions' predicates.
package domain
