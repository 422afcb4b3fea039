package config

import (
	"encoding/binary"
	"fmt"
	"net"
)

// SubnetAllocator hands out consecutive subnets of varying sizes from one
// IPv4 block, each aligned to its own size.
type SubnetAllocator struct {
	network *net.IPNet
	next    uint64
	end     uint64
}

// NewSubnetAllocator creates an allocator over prefix.
func NewSubnetAllocator(prefix string) (*SubnetAllocator, error) {
	_, network, err := net.ParseCIDR(prefix)
	if err != nil {
		return nil, fmt.Errorf("invalid CIDR prefix: %w", err)
	}
	if network.IP.To4() == nil {
		return nil, fmt.Errorf("only IPv4 addresses are supported, got IPv6: %s", prefix)
	}

	ones, bits := network.Mask.Size()
	start := ipToUint(network.IP.To4())
	return &SubnetAllocator{
		network: network,
		next:    start,
		end:     start + uint64(1)<<(bits-ones),
	}, nil
}

// Next returns the next free subnet with the given prefix length.
func (a *SubnetAllocator) Next(maskSize int) (string, error) {
	ones, bits := a.network.Mask.Size()
	if maskSize < ones || maskSize > bits {
		return "", fmt.Errorf("mask /%d does not fit in %s", maskSize, a.network)
	}

	size := uint64(1) << (bits - maskSize)
	start := (a.next + size - 1) / size * size
	if start+size > a.end {
		return "", fmt.Errorf("address space of %s exhausted allocating a /%d", a.network, maskSize)
	}
	a.next = start + size

	return fmt.Sprintf("%s/%d", uintToIP(start).String(), maskSize), nil
}

// ipToUint converts an IPv4 address to uint64.
func ipToUint(ip net.IP) uint64 {
	return uint64(binary.BigEndian.Uint32(ip))
}

// uintToIP converts a uint64 value back to an IPv4 address.
func uintToIP(val uint64) net.IP {
	ip := make(net.IP, 4)
	// #nosec G115
	binary.BigEndian.PutUint32(ip, uint32(val))
	return ip
}
