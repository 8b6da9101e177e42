// See datatype.go for the DataType/PhysicalType tagged variant and
// Field/Schema descriptor types.
package arrowtype
