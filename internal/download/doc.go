// Package download delivers converted images to the user's output
// directory. A conversion first stages its bytes behind a Handle, delivers
// the handle under the requested file name and revokes the handle shortly
// afterwards, mirroring an object URL that outlives the click that used it.
package download
