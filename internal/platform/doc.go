// Package platform contains OS integration: reading dropped or picked files
// into the queue, choosing the default output directory, and revealing
// converted files in the system file manager.
package platform
