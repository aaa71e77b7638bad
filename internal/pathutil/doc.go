// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

// Package pathutil provides reference and location helpers for AsyncAPI
// documents.
//
// # Reference Builders
//
// Every cross reference the assembler emits is built here so the prefixes
// live in one place:
//
//	ref := pathutil.MessageRef("orders:Message")  // "#/components/messages/orders:Message"
//	ref := pathutil.ChannelMessageRef("orders", "Message") // "#/channels/orders/messages/Message"
//
// [DefinitionName] recognizes local "#/$defs/X" and "#/definitions/X" refs
// emitted by schema generators, and [SplitLocal] breaks a local ref into
// pointer segments for resolution.
//
// # PointerBuilder
//
// [PointerBuilder] builds JSON pointer locations with push/pop semantics.
// Use [Get] and [Put] to reuse builders across walks:
//
//	ptr := pathutil.Get()
//	defer pathutil.Put(ptr)
//
//	ptr.Push("channels")
//	ptr.Push(name)
//	// ... recurse ...
//	ptr.Pop()
//
// # Output Path Sanitization
//
// [SanitizeOutputPath] validates output file paths. It rejects symlinks
// and directories.
package pathutil
