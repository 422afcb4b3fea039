// Package topology builds the declaration graph of a service discovery stack.
//
// [Build] runs ordered phases (network, cluster, namespace, identity, task,
// service, zone) over a [config.Config]. Each phase appends typed entities to
// the [Plan] and declarations to its [Graph]; the graph rejects references to
// anything not yet declared, so declaration order is a topological order by
// construction. [Check] re-verifies the structural invariants of the result
// and [Render] serializes it deterministically.
//
// The zone association is split into a [ZoneLookup] (resolve the hosted zone
// behind the provisioned namespace) and a [ZoneAssociation] (attach that zone
// to the validation partition), because the namespace itself offers no way to
// attach another network.
package topology
