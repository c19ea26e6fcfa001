// Package timezone pins every wall-clock value in the service to one
// configured location (APP_TIMEZONE, default Asia/Jakarta).
//
// Booking start dates are parsed with Parse and compared against
// StartOfDay, so "today" means today in the boarding house, not on the
// host. Gateway expiry timestamps arrive without an offset and are parsed
// the same way. The tz database is embedded so the lookup works on slim
// images without /usr/share/zoneinfo.
package timezone
