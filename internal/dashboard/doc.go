// Package dashboard computes chart figures in response to page events.
//
// The page has two independent callback groups. The scatter group recomputes
// the four measurement-pair scatter plots from the map click, the reset
// button, the theme, the region checklist, and the color selector. The map
// group recomputes the site map and the time series from the field selector,
// the theme, and the region checklist. A Dispatcher routes each event to
// every group that listens to the triggering component.
package dashboard
