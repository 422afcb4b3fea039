package cloudmap

import (
	"errors"

	r53types "github.com/aws/aws-sdk-go-v2/service/route53/types"
	sdtypes "github.com/aws/aws-sdk-go-v2/service/servicediscovery/types"
	"github.com/aws/smithy-go"
)

var (
	// ErrNamespaceNotFound is returned when no private DNS namespace has the
	// requested name.
	ErrNamespaceNotFound = errors.New("namespace not found")

	// ErrNoHostedZone is returned when a namespace carries no hosted zone.
	ErrNoHostedZone = errors.New("namespace has no hosted zone")

	// ErrConflictingZone is returned when the VPC is already associated with
	// a different hosted zone of the same domain name.
	ErrConflictingZone = errors.New("VPC is associated with a conflicting hosted zone")
)

// isConflictingDomain reports whether err means the VPC already resolves
// the zone's domain through another hosted zone.
func isConflictingDomain(err error) bool {
	var conflict *r53types.ConflictingDomainExists
	if errors.As(err, &conflict) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "ConflictingDomainExists"
	}
	return false
}

// isNamespaceNotFound reports whether err is Cloud Map's missing-namespace error.
func isNamespaceNotFound(err error) bool {
	var nf *sdtypes.NamespaceNotFound
	if errors.As(err, &nf) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "NamespaceNotFound"
	}
	return false
}

// isPermanent reports whether err will not go away on retry.
func isPermanent(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.ErrorFault() == smithy.FaultClient && apiErr.ErrorCode() != "Throttling"
}
