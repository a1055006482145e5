// SPDX-License-Identifier: MIT

// Package meshsubnet implements the subnet routing table of a mesh VPN
// daemon: the data structure that decides, for every packet entering or
// leaving the tunnel, which remote node owns the destination address.
//
// The package answers three questions at packet rate: which node owns a
// given MAC address, which node's IPv4 prefix is the longest match for an
// address, and likewise for IPv6. It maintains that answer under concurrent
// topology changes (subnets arriving and departing as nodes come and go)
// and drives operator hooks on ownership transitions.
//
// Subnets are held in two kinds of ordered index (package subnettree): one
// global, process-wide index, and one per owning Node. A small two-slot
// lookup cache per address family (package subnetcache) sits in front of
// both so that steady-state packet forwarding rarely has to walk the
// index at all.
package meshsubnet
