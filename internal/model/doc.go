// Package model defines the data collected for one system report.
//
// A Snapshot groups the kernel, memory and disk sections. Each section
// carries a presence flag: collectors leave a section absent when its
// source command could not run, and writers omit the lines of absent
// sections while still printing the section headers.
package model
