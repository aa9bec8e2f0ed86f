// Package scaffold generates a FreePBX module skeleton. It powers the
// "modgen generate" command: it plans the layout, creates directories and
// placeholder files, writes module.xml, renders the class and page files
// from bundled templates, writes the main view and copies the license text.
package scaffold
