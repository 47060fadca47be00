// Package codec converts vehicle records to and from delimited text lines.
//
// # Line Format
//
// Each record occupies one line with four fields in a fixed order:
//
//	plate<d>make<d>model<d>YYYY-MM-DD
//
// where <d> is the configured delimiter (comma by default). Exported files
// start with the header row
//
//	Matricula,Marca,Modelo,Data
//
// Fields containing the delimiter or a double quote are quoted the way
// encoding/csv does it, and Decode accepts the same quoting, so any record
// written by Encode reads back unchanged.
//
// # Comments
//
// Relevant reports whether a raw line carries data. After trimming, blank
// lines and lines starting with '#' are skipped by loaders.
//
// # Usage
//
//	c, err := codec.NewLineCodec(codec.DefaultDelimiter)
//	if err != nil {
//	    return err
//	}
//
//	r, err := c.Decode("11-AAA-22,Toyota,Corolla,2015-03-01")
//	if err != nil {
//	    return err // *vehicle.FormatError or *vehicle.AttributeError
//	}
//
//	line, err := c.Encode(r)
//
// # Error Handling
//
// Decode reports:
//   - *vehicle.FormatError when the line does not split into four fields or
//     the date is not YYYY-MM-DD (errors.Is(err, vehicle.ErrFormat))
//   - *vehicle.AttributeError when a field fails validation
//     (errors.Is(err, vehicle.ErrInvalidAttribute))
//
// # Thread Safety
//
// LineCodec holds no mutable state and is safe for concurrent use.
package codec
