// Package toolchain locates the external tools the downloader depends on.
//
// The transcoder (ffmpeg) is resolved from an ordered list of candidate
// locations and each candidate is verified by running it with -version under
// a timeout. The JavaScript runtime used by the extractor for some sites is
// only checked for presence. Nothing here returns an error to the caller: an
// unusable candidate is logged and skipped.
package toolchain
