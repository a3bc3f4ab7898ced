// Package io reads and writes compass entry documents.
//
// # JSON Format
//
// A document holds one array of entries:
//
//	{
//	  "entries": [
//	    {
//	      "color": "magenta",
//	      "label": "EWC (Kirkpatrick et al., 2017)",
//	      "inner_level": {"multiple_models": 0, "federated": 0, ...},
//	      "outer_level": {"compute_time": false, "mac_operations": false, ...}
//	    }
//	  ]
//	}
//
// Every entry must carry color and label, all 11 inner level keys with a
// value of 0, 1 or 2, and all 15 outer level keys with a boolean value. A
// missing key is an INVALID_INPUT error naming the key. Unknown keys are
// ignored.
//
// # Import
//
// [ImportJSON] reads a file, [ReadJSON] any io.Reader. [ImportFiles] reads
// several documents and concatenates their entries in argument order.
//
// # Export
//
// [WriteJSON] and [ExportJSON] emit attributes in declaration order, so a
// document written by this package reads back into equal entries.
package io
