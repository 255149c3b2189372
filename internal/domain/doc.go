// Package domain models disaster events aggregated from public feeds.
//
// # Data Sources
//
// Events come from two public catalogs, polled on a fixed interval:
//
//	EONET — NASA's Earth Observatory Natural Event Tracker
//	(https://eonet.gsfc.nasa.gov/api/v3/events). Open natural events
//	(wildfires, storms, volcanoes, ...) with one or more dated geometries.
//
//	USGS — the United States Geological Survey earthquake summary feed
//	(https://earthquake.usgs.gov/earthquakes/feed/v1.0/). GeoJSON features
//	for seismic events over the last day.
//
// # Feed Conventions
//
// Coordinates:
//
//	Both feeds report GeoJSON-style [longitude, latitude] ordering, which is
//	reversed into the model's latitude/longitude fields. When an EONET event
//	carries several geometries, the last entry in the array is the most
//	recent observation and is the one recorded.
//
// Dates:
//
//	The date field is a pass-through of the feed's native encoding: RFC 3339
//	strings for EONET geometries, decimal epoch-millisecond strings for USGS
//	feature times. It is stored and sorted as text, not reparsed.
//
// Identity:
//
//	The (id, source) pair is the unique key. IDs are assigned upstream and
//	are only unique within their feed; the same physical event reported by
//	both feeds yields two rows. No cross-feed reconciliation is attempted.
//
// Defaults:
//
//	Missing titles become "n/a", missing categories "unknown", missing
//	geometry 0,0. USGS events are always category "earthquake" and carry a
//	magnitude; EONET events never do.
package domain
