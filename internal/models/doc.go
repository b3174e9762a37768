// Package models defines the core domain models for the Secret Santa organizer.
//
// # Models
//
//   - Participant: one person in a group, identified by name
//   - Group: an organizer-owned roster of participants
//   - History: forbidden giver → receiver pairs carried between rounds
//   - Pair / EventRecord: one generated assignment set plus its metadata
//   - Event: a persisted EventRecord
//   - Organizer: the account that owns groups
//
// # Design Principles
//
//  1. **Names are identities**: participants are case-sensitive name strings,
//     unique within a group. Pairs and history refer to names, not IDs.
//  2. **Records are values**: an EventRecord is immutable once generated;
//     drawing again replaces it wholesale with a new Event.
//  3. **No pointers between models**: relationships use ID strings.
package models
