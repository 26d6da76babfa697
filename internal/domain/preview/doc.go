// Package preview implements theme synchronization between a block detail
// page (the host) and its embedded preview document.
//
// The protocol has three tagged messages:
//
//	preview -> host   {"type":"preview-ready"}
//	host -> preview   {"type":"theme-change","theme":"dark"}
//	host -> preview   {"type":"theme-preset-change","preset":{...}}
//
// The host state is authoritative. Every preview-ready is answered with
// exactly one theme-change followed by one theme-preset-change, so a
// preview that mounts late or remounts always converges. Resending the same
// state is harmless.
//
// Hub relays the protocol between WebSocket connections grouped by channel.
package preview
