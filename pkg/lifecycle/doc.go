// Package lifecycle tracks unattached EBS volumes through a TTL countdown.
//
// Each run scans the volumes in "available" state and counts their TTL tag down,
// then decides from the persisted cycle state and today's date whether to open a
// ticket, post a reminder, delete expired volumes or do nothing. The decision itself
// is the pure function Decide; Tracker wires it to the volume provider, the parameter
// store and the issue tracker.
package lifecycle
