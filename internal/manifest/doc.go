// Package manifest builds, serializes and validates module.xml, the
// descriptor FreePBX reads to register a module. Serialization is
// deterministic: element order is fixed and no XML declaration is emitted.
package manifest
