/*
Package memory holds the in-process structures behind a registry: the IDAllocator, the
canonical EntityStore and the OwnerIndex.

None of the types are safe for concurrent use; the registry serializes every access.
*/
package memory
