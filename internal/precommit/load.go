package precommit

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configurationPathRequiredMessageConstant = "configuration path must be provided"
	configurationReadErrorTemplateConstant   = "failed to read configuration file: %w"
	configurationParseErrorTemplateConstant  = "failed to parse configuration: %w"
	configurationDecodeErrorTemplateConstant = "configuration does not match the expected schema: %w"
	reposFieldNameConstant                   = "repos"
	hooksFieldNameConstant                   = "hooks"
)

// AnchorOccurrence records a named pattern definition or reuse inside the document.
type AnchorOccurrence struct {
	Name string
	Line int
}

// Document is one parsed configuration file together with diagnostic metadata.
// Documents are read once and never mutated afterwards.
type Document struct {
	Path   string
	Config Config

	AnchorDefinitions []AnchorOccurrence
	AliasReferences   []AnchorOccurrence

	repositoryLines []int
	hookLines       [][]int
}

// Load reads and parses the configuration file at the provided path.
func Load(configurationPath string) (Document, error) {
	trimmedPath := strings.TrimSpace(configurationPath)
	if len(trimmedPath) == 0 {
		return Document{}, errors.New(configurationPathRequiredMessageConstant)
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return Document{}, fmt.Errorf(configurationReadErrorTemplateConstant, readError)
	}

	return Parse(contentBytes, trimmedPath)
}

// Parse decodes configuration data into a Document, rejecting unknown fields.
func Parse(configurationData []byte, sourcePath string) (Document, error) {
	var documentNode yaml.Node
	if unmarshalError := yaml.Unmarshal(configurationData, &documentNode); unmarshalError != nil {
		return Document{}, fmt.Errorf(configurationParseErrorTemplateConstant, unmarshalError)
	}

	strictDecoder := yaml.NewDecoder(bytes.NewReader(configurationData))
	strictDecoder.KnownFields(true)

	var configuration Config
	if decodeError := strictDecoder.Decode(&configuration); decodeError != nil && !errors.Is(decodeError, io.EOF) {
		return Document{}, fmt.Errorf(configurationDecodeErrorTemplateConstant, decodeError)
	}

	document := Document{
		Path:   sourcePath,
		Config: configuration,
	}

	rootMapping := resolveRootMapping(&documentNode)
	document.collectAnchorOccurrences(rootMapping, map[*yaml.Node]struct{}{})
	document.collectRecordLines(rootMapping)

	return document, nil
}

// RepoLine returns the source line of the repo record at the provided index.
func (document Document) RepoLine(repositoryIndex int) int {
	if repositoryIndex < 0 || repositoryIndex >= len(document.repositoryLines) {
		return 0
	}
	return document.repositoryLines[repositoryIndex]
}

// HookLine returns the source line of the hook entry at the provided indices.
func (document Document) HookLine(repositoryIndex int, hookIndex int) int {
	if repositoryIndex < 0 || repositoryIndex >= len(document.hookLines) {
		return 0
	}
	hookLineEntries := document.hookLines[repositoryIndex]
	if hookIndex < 0 || hookIndex >= len(hookLineEntries) {
		return 0
	}
	return hookLineEntries[hookIndex]
}

func resolveRootMapping(documentNode *yaml.Node) *yaml.Node {
	if documentNode == nil {
		return nil
	}
	if documentNode.Kind == yaml.DocumentNode && len(documentNode.Content) > 0 {
		return documentNode.Content[0]
	}
	return documentNode
}

func (document *Document) collectAnchorOccurrences(node *yaml.Node, visited map[*yaml.Node]struct{}) {
	if node == nil {
		return
	}
	if _, alreadyVisited := visited[node]; alreadyVisited {
		return
	}
	visited[node] = struct{}{}

	if len(node.Anchor) > 0 {
		document.AnchorDefinitions = append(document.AnchorDefinitions, AnchorOccurrence{Name: node.Anchor, Line: node.Line})
	}

	if node.Kind == yaml.AliasNode {
		document.AliasReferences = append(document.AliasReferences, AnchorOccurrence{Name: node.Value, Line: node.Line})
		return
	}

	for _, childNode := range node.Content {
		document.collectAnchorOccurrences(childNode, visited)
	}
}

func (document *Document) collectRecordLines(rootMapping *yaml.Node) {
	repositorySequence := mappingValue(rootMapping, reposFieldNameConstant)
	if repositorySequence == nil || repositorySequence.Kind != yaml.SequenceNode {
		return
	}

	for _, repositoryNode := range repositorySequence.Content {
		document.repositoryLines = append(document.repositoryLines, repositoryNode.Line)

		hookLineEntries := []int{}
		hooksSequence := mappingValue(repositoryNode, hooksFieldNameConstant)
		if hooksSequence != nil && hooksSequence.Kind == yaml.SequenceNode {
			for _, hookNode := range hooksSequence.Content {
				hookLineEntries = append(hookLineEntries, hookNode.Line)
			}
		}
		document.hookLines = append(document.hookLines, hookLineEntries)
	}
}

func mappingValue(mappingNode *yaml.Node, fieldName string) *yaml.Node {
	if mappingNode == nil || mappingNode.Kind != yaml.MappingNode {
		return nil
	}
	for contentIndex := 0; contentIndex+1 < len(mappingNode.Content); contentIndex += 2 {
		keyNode := mappingNode.Content[contentIndex]
		if keyNode != nil && keyNode.Value == fieldName {
			return mappingNode.Content[contentIndex+1]
		}
	}
	return nil
}
