// Package models defines the CRM dataset entities consumed by the reporting
// layer: customer records, representative ownership links, and import batch
// bookkeeping. Entities are immutable inputs once loaded; nothing in the
// reporting path creates, mutates, or destroys them.
package models
