// Package cloudmap associates the hosted zone behind a Cloud Map private
// DNS namespace with an additional VPC, against live AWS.
//
// A namespace cannot be attached to a second VPC directly. The association
// resolves the namespace by name, reads its hosted zone ID, associates the
// VPC with that zone in Route 53, and waits for the change to propagate.
package cloudmap
