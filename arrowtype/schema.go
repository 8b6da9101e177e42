package arrowtype

// Schema is the plain Go stand-in for the wire flatbuffers/thrift schema
// descriptor: an ordered list of top-level fields plus the metadata
// version.
type Schema struct {
	Fields  []Field
	Version MetadataVersion
}

// MetadataVersion is a schema's metadata version. By PositionalUnionTypeIDs,
// V1-V4 infer Union type ids positionally (0..N); V5 and later take the
// mapping from the field descriptor's UnionTypeIDs. ipc.Reader does not
// consult the version: for every version it uses UnionTypeIDs when they
// are non-empty and positional ids otherwise.
type MetadataVersion uint8

const (
	MetadataV1 MetadataVersion = iota + 1
	MetadataV2
	MetadataV3
	MetadataV4
	MetadataV5
)

// PositionalUnionTypeIDs reports whether v infers Union type ids
// positionally rather than from the field descriptor.
func (v MetadataVersion) PositionalUnionTypeIDs() bool {
	return v <= MetadataV4
}
